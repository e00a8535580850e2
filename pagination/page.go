package pagination

// Page is the backend's pagination envelope for any listing endpoint. The
// item slice arrives under the "data" key of the outer response envelope's
// data object.
type Page[T any] struct {
	Items         []T `json:"data"`
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

// HasMore reports whether another page can be loaded after this one. A page
// shorter than the requested size always stops loading, even when
// totalPages claims otherwise; backend counts have been observed to drift
// from the actual row set.
func (p Page[T]) HasMore(requestedSize int) bool {
	if requestedSize > 0 && len(p.Items) < requestedSize {
		return false
	}
	return p.Page+1 < p.TotalPages
}

// Request carries the common page/size selection of listing calls.
type Request struct {
	Page int
	Size int
}

// FilterItem is a single selectable entry of the reference-data endpoints
// backing the filter menus (genres, platforms, statuses, years, ...).
type FilterItem struct {
	UID  string `json:"uid"`
	Name any    `json:"name"` // string or number depending on the endpoint
}

// FilterRequest parameterizes reference-data lookups.
type FilterRequest struct {
	Page   *int
	Size   *int
	Search string
}
