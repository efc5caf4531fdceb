package logx

type discard struct{}

// Nop returns a Logger that drops every entry.
func Nop() Logger { return discard{} }

// OrNop returns l, or Nop when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return discard{}
	}
	return l
}

func (discard) Debug(string, ...Field) {}
func (discard) Info(string, ...Field)  {}
func (discard) Warn(string, ...Field)  {}
func (discard) Error(string, ...Field) {}

func (d discard) With(...Field) Logger { return d }

func (discard) Sync() error { return nil }
