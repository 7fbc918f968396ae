package notification

import (
	"context"
	"fmt"
	"strings"
)

// Kind selects which lifecycle point a notification reports.
type Kind int

const (
	KindStart Kind = iota + 1
	KindSuccess
	KindFailure
)

const (
	TaskNotify        = "rocketchat:notify"
	TaskNotifySuccess = "rocketchat:notify:success"
	TaskNotifyFailure = "rocketchat:notify:failure"
)

var Kinds = []Kind{KindStart, KindSuccess, KindFailure}

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindSuccess:
		return "success"
	case KindFailure:
		return "failure"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Task is the name the entry point for k is registered under.
func (k Kind) Task() string {
	switch k {
	case KindSuccess:
		return TaskNotifySuccess
	case KindFailure:
		return TaskNotifyFailure
	}
	return TaskNotify
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "start", "notify":
		return KindStart, nil
	case "success":
		return KindSuccess, nil
	case "failure", "failed":
		return KindFailure, nil
	}
	return 0, fmt.Errorf("unknown notification kind: %q", s)
}

type Sender interface {
	Name() string
	CanSend() bool
	Notify(ctx context.Context, kind Kind) error
}
