package model

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses lists every status in board column order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// StatusInfo is the display description of a status.
type StatusInfo struct {
	Title string `json:"title"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

var statusInfo = map[Status]StatusInfo{
	StatusTodo:       {Title: "To Do", Color: "blue", Icon: "circle"},
	StatusInProgress: {Title: "In Progress", Color: "orange", Icon: "clock"},
	StatusDone:       {Title: "Done", Color: "green", Icon: "checkmark.circle.fill"},
}

func (s Status) Valid() bool {
	_, ok := statusInfo[s]
	return ok
}

func (s Status) Info() StatusInfo {
	return statusInfo[s]
}

// Rank orders statuses for sorting: todo < in_progress < done.
func (s Status) Rank() int {
	switch s {
	case StatusTodo:
		return 0
	case StatusInProgress:
		return 1
	case StatusDone:
		return 2
	default:
		return 3
	}
}

// Next is the board "advance" step. Done has no next step.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusTodo:
		return StatusInProgress, true
	case StatusInProgress:
		return StatusDone, true
	default:
		return s, false
	}
}
