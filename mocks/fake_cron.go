//go:build !release

package mocks

import "sync"

type fakeCron struct {
	sync.Mutex
	jobs map[int]func()
	next int
}

func (f *fakeCron) AddFunc(spec string, cmd func()) (int, error) {
	f.Lock()
	defer f.Unlock()
	f.next++
	f.jobs[f.next] = cmd
	return f.next, nil
}

func (f *fakeCron) RemoveFunc(id int) {
	f.Lock()
	defer f.Unlock()
	delete(f.jobs, id)
}

// Fire invokes every registered job once.
func (f *fakeCron) Fire() {
	f.Lock()
	jobs := make([]func(), 0, len(f.jobs))
	for _, v := range f.jobs {
		jobs = append(jobs, v)
	}
	f.Unlock()

	for _, v := range jobs {
		v()
	}
}

// Jobs returns number of registered jobs.
func (f *fakeCron) Jobs() int {
	f.Lock()
	defer f.Unlock()
	return len(f.jobs)
}

// FakeNewCron creates a fake cron provider.
func FakeNewCron() *fakeCron {
	return &fakeCron{
		jobs: make(map[int]func()),
	}
}
