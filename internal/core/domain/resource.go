package domain

// Resource is a bookable entity managed by administrators. The portal only
// caches resources for display; the backend owns the catalog.
type Resource struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RemoveResource returns list without the resource matching id. Used after a
// successful delete so the page reflects the removal without a refetch.
func RemoveResource(list []Resource, id string) []Resource {
	out := make([]Resource, 0, len(list))
	for _, r := range list {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}
