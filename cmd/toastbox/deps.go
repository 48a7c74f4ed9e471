package main

import (
	"context"
	"sync"

	"github.com/cristianoliveira/toastbox/internal/app"
	"github.com/cristianoliveira/toastbox/internal/center"
	tuiapp "github.com/cristianoliveira/toastbox/internal/tui/app"
	"github.com/cristianoliveira/toastbox/internal/tui/state"
	"github.com/cristianoliveira/toastbox/internal/version"
)

// runtimeProvider builds the runtime on first use, after the root command
// has loaded configuration.
type runtimeProvider struct {
	once  sync.Once
	build func() *app.Runtime
	rt    *app.Runtime
}

func newRuntimeProvider(build func() *app.Runtime) *runtimeProvider {
	return &runtimeProvider{build: build}
}

func (p *runtimeProvider) runtime() *app.Runtime {
	p.once.Do(func() {
		p.rt = p.build()
	})
	return p.rt
}

func (p *runtimeProvider) NewCenter() (*center.Center, func() error, error) {
	return p.runtime().NewCenter()
}

func (p *runtimeProvider) CreateModel(opts state.Options) (tuiapp.Model, error) {
	return p.runtime().CreateModel(opts)
}

func (p *runtimeProvider) RunProgram(ctx context.Context, model tuiapp.Model, fullscreen bool) error {
	return p.runtime().RunProgram(ctx, model, fullscreen)
}

func (p *runtimeProvider) ToastWidth() int {
	return p.runtime().ToastWidth()
}

func (p *runtimeProvider) OpenHistory() (app.HistoryStore, error) {
	return p.runtime().OpenHistory()
}

func (p *runtimeProvider) Version() string {
	return version.String()
}

var runtimeClient = newRuntimeProvider(func() *app.Runtime {
	return app.NewRuntime(app.RuntimeConfigFromGlobal(), nil)
})
