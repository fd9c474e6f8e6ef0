package config

type WorkerKeyStruct struct {
	ReloadJobsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	ReloadJobsQueue: "reload_jobs_queue",
}
