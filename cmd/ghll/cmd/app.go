package cmd

import (
	"github.com/msto63/ghll/foundation/ghll"
	"github.com/msto63/ghll/internal/history"
)

func newEngine() (*ghll.Engine, error) {
	return ghll.New(ghll.Options{MaxInputLength: appConfig.REPL.MaxInputLength})
}

// openHistory returns nil without error when the journal is disabled
func openHistory() (*history.Store, error) {
	if !appConfig.History.Enabled {
		return nil, nil
	}
	return history.Open(history.Config{Path: appConfig.History.Path})
}
