package panel

// Phase of a setting: Idle -> Writing -> Applied | Rejected -> Idle.
type Phase int

const (
	Idle Phase = iota
	Writing
	Applied
	Rejected
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Writing:
		return "writing"
	case Applied:
		return "applied"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
