package metadata

import "fmt"

type Status string

const (
	StatusInUse       Status = "IN_USE"
	StatusInStock     Status = "IN_STOCK"
	StatusMaintenance Status = "MAINTENANCE"
	StatusRetired     Status = "RETIRED"
)

func Statuses() []Status {
	return []Status{StatusInUse, StatusInStock, StatusMaintenance, StatusRetired}
}

func NewStatus(value string) (Status, error) {
	status := Status(value)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return status, nil
}

func (s Status) IsValid() bool {
	switch s {
	case StatusInUse, StatusInStock, StatusMaintenance, StatusRetired:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// Code is the short tag used when composing seed serial numbers.
func (s Status) Code() string {
	switch s {
	case StatusInUse:
		return "USE"
	case StatusInStock:
		return "STK"
	case StatusMaintenance:
		return "MNT"
	case StatusRetired:
		return "RET"
	default:
		return "UNK"
	}
}
