package notify

import (
	"sync"

	"booking-backend/internal/utils"
)

type job struct {
	to   string
	code string
}

// Mailer drains queued OTP sends on a single background worker.
// Enqueue never blocks the caller and send failures are logged, never
// propagated: a failed email must not fail the booking request.
type Mailer struct {
	notifier Notifier
	jobs     chan job
	done     chan struct{}
	once     sync.Once
}

func NewMailer(n Notifier, buffer int) *Mailer {
	if buffer <= 0 {
		buffer = 64
	}
	m := &Mailer{
		notifier: n,
		jobs:     make(chan job, buffer),
		done:     make(chan struct{}),
	}
	go m.run()
	return m
}

// Enqueue hands the code to the background worker. When the queue is full
// the job is dropped and logged, keeping the request path non-blocking.
func (m *Mailer) Enqueue(to, code string) {
	select {
	case m.jobs <- job{to: to, code: code}:
	default:
		utils.LogEvent("", "mail", "queue_full", "to="+to)
	}
}

func (m *Mailer) run() {
	defer close(m.done)
	for j := range m.jobs {
		if err := m.notifier.Notify(j.to, j.code); err != nil {
			utils.LogEvent("", "mail", "send_failed", "to="+j.to+" err="+err.Error())
		}
	}
}

// Close stops accepting jobs and waits for the queue to drain.
func (m *Mailer) Close() {
	m.once.Do(func() { close(m.jobs) })
	<-m.done
}
