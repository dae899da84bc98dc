package service

import "github.com/sirupsen/logrus"

// auxEffect is one post-commit side effect: history logging, sidecar export,
// automatic state-machine checks, folder cleanup.
type auxEffect struct {
	name string
	fn   func() error
}

// runAuxiliary executes each effect independently after the primary write has
// committed. A failure is logged against the operation and never reverts or
// fails the call.
func runAuxiliary(op string, effects ...auxEffect) {
	for _, effect := range effects {
		if effect.fn == nil {
			continue
		}
		if err := effect.fn(); err != nil {
			logrus.Errorf("%s: auxiliary step %q failed: %v", op, effect.name, err)
		}
	}
}
