package models

// DiffKind tags a single change delivered by the live report subscription.
type DiffKind string

const (
	DiffAdded    DiffKind = "added"
	DiffModified DiffKind = "modified"
	DiffRemoved  DiffKind = "removed"
)

// ReportDiff is one tagged change event. Added and modified diffs carry the
// full current document value; removed diffs carry only the id.
type ReportDiff struct {
	Kind   DiffKind `json:"kind"`
	ID     string   `json:"id"`
	Report Report   `json:"report,omitempty"`
}
