package strategy

import (
	"fmt"
	"strings"
)

// ScheduleRule restricts an inner rule to a daily window [Start, End) in the
// observation's own timezone. A window with Start > End wraps midnight.
type ScheduleRule struct {
	Start string // "HH:MM"
	End   string // "HH:MM"
	Inner Rule

	startMins int
	endMins   int
}

func NewScheduleRule(start, end string, inner Rule) (*ScheduleRule, error) {
	s, err := parseHHMM(start)
	if err != nil {
		return nil, err
	}
	e, err := parseHHMM(end)
	if err != nil {
		return nil, err
	}
	if inner == nil {
		return nil, fmt.Errorf("schedule rule needs an inner rule")
	}
	return &ScheduleRule{Start: start, End: end, Inner: inner, startMins: s, endMins: e}, nil
}

func (s *ScheduleRule) Name() string {
	return fmt.Sprintf("%s@%s-%s", s.Inner.Name(), s.Start, s.End)
}

func (s *ScheduleRule) Operate(ctx Context) bool {
	t := ctx.Observation.Time
	mins := t.Hour()*60 + t.Minute()
	if !inWindow(mins, s.startMins, s.endMins) {
		return false
	}
	return s.Inner.Operate(ctx)
}

func parseHHMM(s string) (int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	var h, m int
	if _, err := fmt.Sscanf(parts[0], "%d", &h); err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &m); err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return h*60 + m, nil
}

// inWindow checks whether tMins is in [start, end) on a 24h clock.
// If start == end, the window is empty (always false).
// If start > end, it wraps across midnight.
func inWindow(tMins, start, end int) bool {
	if start == end {
		return false
	}
	if start < end {
		return tMins >= start && tMins < end
	}
	return tMins >= start || tMins < end
}
