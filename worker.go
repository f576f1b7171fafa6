package qsweep

// Worker runs the jobs sent to its rank until its channel is closed.
type Worker struct {
	pool *Pool
	rank int
	jobs chan Job
}

// run never abandons a job it has been handed; a sweep that has started
// always finishes.
func (w *Worker) run() {
	for job := range w.jobs {
		w.process(job)
	}
}

func (w *Worker) process(job Job) {
	defer job.done.Done()
	job.Fn(w.rank, job.Lo, job.Hi)
}
