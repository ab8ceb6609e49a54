package domain

import (
	"encoding/json"

	perr "modgate/internal/platform/errors"
)

// SnapshotKind tags the snapshot variant
type SnapshotKind string

// Snapshot variants. Reports reference existing content and carry no snapshot
const (
	SnapshotNone    SnapshotKind = ""
	SnapshotBlog    SnapshotKind = "blog"
	SnapshotComment SnapshotKind = "comment"
)

// Snapshot is the immutable copy of a submission. It is a tagged variant so
// resolution works on typed fields instead of re-parsing loose strings, and
// it replays even if the author or category is deleted later
type Snapshot struct {
	Kind    SnapshotKind     `json:"kind"`
	Blog    *BlogSnapshot    `json:"blog,omitempty"`
	Comment *CommentSnapshot `json:"comment,omitempty"`
}

// BlogSnapshot carries a queued blog publish or edit
type BlogSnapshot struct {
	Title      string  `json:"title"`
	Body       string  `json:"body"`
	CategoryID *string `json:"category_id,omitempty"`
}

// CommentSnapshot carries a queued comment
type CommentSnapshot struct {
	BlogID        string  `json:"blog_id"`
	ParentID      *string `json:"parent_id,omitempty"`
	ReplyToUserID *string `json:"reply_to_user_id,omitempty"`
	Body          string  `json:"body"`
}

// Validate checks that the tag and payload agree
func (s Snapshot) Validate() error {
	switch s.Kind {
	case SnapshotNone:
		if s.Blog != nil || s.Comment != nil {
			return perr.InvalidArgf("snapshot: payload present without a kind")
		}
	case SnapshotBlog:
		if s.Blog == nil || s.Comment != nil {
			return perr.InvalidArgf("snapshot: blog kind requires exactly a blog payload")
		}
	case SnapshotComment:
		if s.Comment == nil || s.Blog != nil {
			return perr.InvalidArgf("snapshot: comment kind requires exactly a comment payload")
		}
	default:
		return perr.InvalidArgf("snapshot: unknown kind %q", s.Kind)
	}
	return nil
}

// Text returns the flat text the moderation stages scan
func (s Snapshot) Text() string {
	switch s.Kind {
	case SnapshotBlog:
		if s.Blog.Title == "" {
			return s.Blog.Body
		}
		return s.Blog.Title + "\n" + s.Blog.Body
	case SnapshotComment:
		return s.Comment.Body
	}
	return ""
}

// Encode serializes the snapshot for the jsonb column
func (s Snapshot) Encode() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "encode snapshot")
	}
	return raw, nil
}

// DecodeSnapshot parses a stored snapshot and re-validates the variant
func DecodeSnapshot(raw []byte) (Snapshot, error) {
	if len(raw) == 0 {
		return Snapshot{}, nil
	}
	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return Snapshot{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "decode snapshot")
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
