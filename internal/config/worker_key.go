package config

type WorkerKeyStruct struct{}

func NewWorkerKeyStruct() *WorkerKeyStruct {
	return &WorkerKeyStruct{}
}

// PersistAttemptsQueue is the Redis list consumed by the attempt worker.
func (r *WorkerKeyStruct) PersistAttemptsQueue() string {
	return "persist_attempts_queue"
}

// PersistDraftsQueue is the Redis list consumed by the dictation draft worker.
func (r *WorkerKeyStruct) PersistDraftsQueue() string {
	return "persist_drafts_queue"
}

var WorkerKey = NewWorkerKeyStruct()
