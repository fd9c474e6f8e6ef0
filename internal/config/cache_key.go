package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// GraphGenerationKey holds the id of the last successful load. Cached query
// results are namespaced by it so a reload invalidates them all at once.
func (r *CacheKeyStruct) GraphGenerationKey() string {
	return "graph:generation"
}

// StudentContextKey returns the cache key for a student's context lookup
func (r *CacheKeyStruct) StudentContextKey(generation, studentID string) string {
	return fmt.Sprintf("graph:%s:student:%s:context", generation, studentID)
}

// CourseResourcesKey returns the cache key for a course's resource lookup
func (r *CacheKeyStruct) CourseResourcesKey(generation, courseID string) string {
	return fmt.Sprintf("graph:%s:course:%s:resources", generation, courseID)
}

// DepartmentCoursesKey returns the cache key for a department's course listing
func (r *CacheKeyStruct) DepartmentCoursesKey(generation, departmentID string) string {
	return fmt.Sprintf("graph:%s:department:%s:courses", generation, departmentID)
}

// RunProgressChannel returns the Redis PubSub channel name for a load run
func (r *CacheKeyStruct) RunProgressChannel(runID string) string {
	return fmt.Sprintf("run:%s:progress", runID)
}

var CacheKey = NewCacheKeyStruct()
