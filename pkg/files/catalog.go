package files

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/dmitrymomot/filevault/pkg/storage"
)

// Sort keys and orders.
const (
	SortByDate = "date"
	SortBySize = "size"
	OrderAsc   = "asc"
	OrderDesc  = "desc"
)

// epoch stands in for a missing modification time.
var epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// View is one catalog entry.
type View struct {
	UpdatedAt   *time.Time `json:"updated_at"`
	Filename    string     `json:"filename"`
	Ext         string     `json:"ext"`
	ObjectName  string     `json:"object_name"`
	Bucket      string     `json:"bucket"`
	ContentType string     `json:"content_type"`
	Owner       string     `json:"uid"`
	Size        int64      `json:"size"`
}

// ListOptions filter and order a listing. Zero values mean no filter,
// newest first.
type ListOptions struct {
	Query    string
	FileType string
	SortBy   string
	Order    string
}

// NewView maps a stored object to its catalog entry.
func NewView(obj storage.Object, bucket string) View {
	owner, name := ParseKey(obj.Key)
	v := View{
		Filename:    name,
		Ext:         Extension(name),
		ObjectName:  obj.Key,
		Bucket:      bucket,
		Size:        obj.Size,
		ContentType: obj.ContentType,
		Owner:       owner,
	}
	if !obj.UpdatedAt.IsZero() {
		t := obj.UpdatedAt
		v.UpdatedAt = &t
	}
	return v
}

// Catalog applies the file type filter, the query filter and the sort, in that order.
func Catalog(views []View, opts ListOptions) []View {
	out := make([]View, 0, len(views))
	fold := cases.Fold()
	query := fold.String(opts.Query)

	for _, v := range views {
		if opts.FileType != "" && v.Ext != opts.FileType {
			continue
		}
		if query != "" && !strings.Contains(fold.String(v.Filename), query) {
			continue
		}
		out = append(out, v)
	}

	Sort(out, opts.SortBy, opts.Order)
	return out
}

// Sort orders views in place by size when sortBy is "size" and by
// modification time otherwise. Order is descending unless order is exactly "asc".
// Equal keys keep their relative order.
func Sort(views []View, sortBy, order string) {
	var compare func(a, b View) int
	if sortBy == SortBySize {
		compare = func(a, b View) int { return cmp.Compare(a.Size, b.Size) }
	} else {
		compare = func(a, b View) int { return updatedAt(a).Compare(updatedAt(b)) }
	}

	if order != OrderAsc {
		asc := compare
		compare = func(a, b View) int { return asc(b, a) }
	}
	slices.SortStableFunc(views, compare)
}

func updatedAt(v View) time.Time {
	if v.UpdatedAt == nil || v.UpdatedAt.IsZero() {
		return epoch
	}
	return *v.UpdatedAt
}
