package cmd

import (
	"expvar"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/ppistat/poisample/sampler"
)

type monitor struct {
	info    *expvar.Map
	stopped chan struct{}
	server  *http.Server
	began   time.Time

	Title        *expvar.String
	Chains       *expvar.Int
	Iteration    *expvar.Int
	TotalIters   *expvar.Int
	Retained     *expvar.Int
	Alpha        *expvar.Float
	BetaInd      *expvar.Float
	AcceptRate   *expvar.Float
	WindowAccept *expvar.Float
	RunTime      *expvar.Float
}

// Start begins the monitor
func (m *monitor) Start(addr string) error {
	if m.info != nil {
		return errors.Errorf("BUG: You may only start the process monitor once")
	}

	m.info = expvar.NewMap("poisample-progress")
	m.stopped = make(chan struct{})
	m.began = time.Now()
	m.server = &http.Server{
		Addr: addr,
	}

	// Help the user and redirect to the only thing currently available:
	// the handler from the expvar package
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/debug/vars", http.StatusTemporaryRedirect)
	})

	m.Title = expvar.NewString("Title")
	m.Chains = expvar.NewInt("Chain-Count")
	m.Iteration = expvar.NewInt("Iteration")
	m.TotalIters = expvar.NewInt("Total-Iterations")
	m.Retained = expvar.NewInt("Retained-Samples")
	m.Alpha = expvar.NewFloat("Alpha")
	m.BetaInd = expvar.NewFloat("Beta-Ind")
	m.AcceptRate = expvar.NewFloat("Accept-Rate")
	m.WindowAccept = expvar.NewFloat("Window-Accept-Rate")
	m.RunTime = expvar.NewFloat("Run-Time")

	// Actual server that will close the stopped channel on exit
	started := make(chan struct{})
	go func() {
		defer close(m.stopped)
		fmt.Fprintf(os.Stderr, "HTTP now available at %v (see debug/vars/)\n", m.server.Addr)
		close(started)
		m.server.ListenAndServe()
	}()

	<-started
	return nil
}

// Update publishes one progress report. With several chains running the
// vars reflect whichever chain reported last; the iteration counts
// still give a fair picture because the chains advance together.
func (m *monitor) Update(p sampler.Progress) {
	if m.info == nil {
		return
	}

	m.Title.Set(p.Title)
	m.Iteration.Set(int64(p.Iteration))
	m.TotalIters.Set(int64(p.TotalIterations))
	m.Retained.Set(int64(p.Retained))
	m.Alpha.Set(p.Alpha)
	m.BetaInd.Set(p.BetaInd)
	m.AcceptRate.Set(p.AcceptRate)
	m.WindowAccept.Set(p.WindowAcceptRate)
	m.RunTime.Set(time.Since(m.began).Seconds())
}

func (m *monitor) Stop() {
	if m.info == nil {
		return
	}

	m.server.Close()

	select {
	case <-m.stopped:
		fmt.Fprintf(os.Stderr, "HTTP Info Stopped\n")
	case <-time.After(2 * time.Second):
		fmt.Fprintf(os.Stderr, "HTTP would NOT stop: just continuing on\n")
	}
}
