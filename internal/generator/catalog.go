package generator

import "github.com/cbnu/campus-ontology/internal/model"

// Fixed reference data. Order matters: generators walk these slices in order
// and the random stream depends on it.

var colleges = []model.College{
	{ID: "COL-ENG", Name: "College of Engineering", Type: "Engineering", Dean: "Prof. Seo"},
	{ID: "COL-ICT", Name: "College of ICT Convergence", Type: "ICT", Dean: "Prof. Lee"},
	{ID: "COL-HUM", Name: "College of Humanities", Type: "Humanities", Dean: "Prof. Han"},
	{ID: "COL-BUS", Name: "School of Business", Type: "Business", Dean: "Prof. Park"},
	{ID: "COL-SCI", Name: "College of Natural Sciences", Type: "Science", Dean: "Prof. Jung"},
}

var departments = []model.Department{
	{ID: "DEP-CSE", Name: "Computer Science and Engineering", Code: "CSE", Building: "ICT-101", CollegeID: "COL-ICT"},
	{ID: "DEP-SWE", Name: "Software Engineering", Code: "SWE", Building: "ICT-102", CollegeID: "COL-ICT"},
	{ID: "DEP-ICE", Name: "Information Communication Engineering", Code: "ICE", Building: "ICT-103", CollegeID: "COL-ICT"},
	{ID: "DEP-EEE", Name: "Electrical Engineering", Code: "EEE", Building: "ENG-201", CollegeID: "COL-ENG"},
	{ID: "DEP-ELE", Name: "Electronics Engineering", Code: "ELE", Building: "ENG-202", CollegeID: "COL-ENG"},
	{ID: "DEP-MEC", Name: "Mechanical Engineering", Code: "MEC", Building: "ENG-301", CollegeID: "COL-ENG"},
	{ID: "DEP-CVE", Name: "Civil Engineering", Code: "CVE", Building: "ENG-302", CollegeID: "COL-ENG"},
	{ID: "DEP-CHE", Name: "Chemical Engineering", Code: "CHE", Building: "ENG-303", CollegeID: "COL-ENG"},
	{ID: "DEP-IND", Name: "Industrial Engineering", Code: "IND", Building: "ENG-304", CollegeID: "COL-ENG"},
	{ID: "DEP-BUS", Name: "Business Administration", Code: "BUS", Building: "BUS-101", CollegeID: "COL-BUS"},
	{ID: "DEP-ECO", Name: "Global Economics", Code: "ECO", Building: "BUS-102", CollegeID: "COL-BUS"},
	{ID: "DEP-TRD", Name: "International Trade", Code: "TRD", Building: "BUS-103", CollegeID: "COL-BUS"},
	{ID: "DEP-ACC", Name: "Accounting", Code: "ACC", Building: "BUS-104", CollegeID: "COL-BUS"},
	{ID: "DEP-ENG", Name: "English Language and Literature", Code: "ENG", Building: "HUM-101", CollegeID: "COL-HUM"},
	{ID: "DEP-KOR", Name: "Korean Literature", Code: "KOR", Building: "HUM-102", CollegeID: "COL-HUM"},
	{ID: "DEP-HIS", Name: "History", Code: "HIS", Building: "HUM-103", CollegeID: "COL-HUM"},
	{ID: "DEP-MAT", Name: "Mathematics", Code: "MAT", Building: "SCI-101", CollegeID: "COL-SCI"},
	{ID: "DEP-PHY", Name: "Physics", Code: "PHY", Building: "SCI-102", CollegeID: "COL-SCI"},
	{ID: "DEP-CHM", Name: "Chemistry", Code: "CHM", Building: "SCI-103", CollegeID: "COL-SCI"},
	{ID: "DEP-STA", Name: "Statistics", Code: "STA", Building: "SCI-104", CollegeID: "COL-SCI"},
}

var trackTopics = []string{
	"AI Systems", "Data Science", "Software Innovation", "Smart Factory", "Robotics",
	"Cyber Security", "IoT Platforms", "Digital Finance", "Marketing Analytics", "Global Commerce",
	"Cultural Content", "Bioinformatics", "Quantum Technology", "Green Energy", "Applied Mathematics",
}

type eventTemplate struct {
	name      string
	startWeek int
	endWeek   int
	yearFocus int // 0 means drawn per term
	abbr      string
}

var eventTemplates = []eventTemplate{
	{"Course Registration", 1, 2, 0, "REG"},
	{"Add/Drop", 3, 4, 0, "ADD"},
	{"Midterm Exams", 7, 8, 0, "MID"},
	{"Final Exams", 15, 16, 0, "FIN"},
	{"Graduation Check", 17, 18, 4, "GRD"},
}

var (
	lastNames  = []string{"Kim", "Lee", "Park", "Choi", "Jung", "Kang", "Cho", "Yoon", "Jang", "Han"}
	firstNames = []string{
		"Minji", "Jisoo", "Hana", "Sujin", "Hyeri", "Doyeon",
		"Yuna", "Seojun", "Hyunwoo", "Jiwon", "Taehyun", "Minseok",
	}
)

var (
	bookTopics = []string{
		"AI", "Networks", "Databases", "Robotics", "Economics",
		"Marketing", "Finance", "Literature", "Mathematics", "Chemistry",
	}
	publishers = []string{"CBNU Press", "Orion Publishing", "Campus House", "Scholarly Hub"}
)

var (
	programCategories = []string{"Leadership", "AI", "Global", "Career", "Research", "Startup"}
	competencies      = []string{
		"Creativity", "Collaboration", "Problem Solving",
		"Communication", "Global Citizenship", "Digital Literacy",
	}
	programDelivery = []string{"Online", "On-site", "Hybrid"}
)

var professorTitles = []string{"Assistant Professor", "Associate Professor", "Professor"}

var (
	courseTopics = []string{
		"Algorithms", "Data Structures", "Media", "Operations", "Finance",
		"Sensors", "Networks", "Machine Learning", "Chemistry Lab", "Modern Poetry",
	}
	courseCredits      = []int{2, 3, 3, 4}
	courseCategories   = []string{"core", "elective"}
	courseDelivery     = []string{"In-person", "Blended", "Online"}
	advancedCredits    = []int{3, 4}
	advancedDelivery   = []string{"In-person", "Blended"}
	scholarshipPrefix  = []string{"Merit", "Global", "Innovation", "Future"}
	scholarshipKinds   = []string{"Merit", "Need-based", "Research", "Global"}
	scholarshipCredits = []int{30, 45, 60, 90, 120}
	scholarshipAmounts = []int{500000, 800000, 1000000, 1500000}
	scholarshipStatus  = []string{"open", "closed"}
)

// Year level distribution of generated students, index 0 is year 1.
var yearLevelWeights = []float64{0.27, 0.26, 0.24, 0.23}

// Cardinality floors.
const (
	minMajorTracks     = 30
	termCount          = 8
	firstTermYear      = 2024
	bookCount          = 500
	minPrograms        = 100
	professorsPerDept  = 4
	coursesPerDept     = 12
	minCourses         = 260
	scholarshipCount   = 50
	requiredCredits    = 130
	graduatingCredits  = 145
	firstStudentNumber = 20180000
)
