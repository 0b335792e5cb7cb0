package model

import "time"

type NoticeKind string

const (
	NoticeAcknowledgment NoticeKind = "acknowledgment"
	NoticeCelebration    NoticeKind = "celebration"
)

// Notice is a short-lived banner shown after a capture or a completion.
type Notice struct {
	Kind      NoticeKind `json:"kind"`
	Message   string     `json:"message"`
	PostedAt  time.Time  `json:"posted_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}
