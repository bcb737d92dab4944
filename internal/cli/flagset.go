package cli

import "flag"

// NewFlagSet returns a clean FlagSet with ContinueOnError.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	return fs
}

// StringList is a flag.Value collecting comma-separated or repeated values.
type StringList struct{ Dst *[]string }

func (s StringList) String() string {
	if s.Dst == nil {
		return ""
	}
	return join(*s.Dst)
}

func (s StringList) Set(v string) error {
	for _, p := range split(v) {
		*s.Dst = append(*s.Dst, p)
	}
	return nil
}
