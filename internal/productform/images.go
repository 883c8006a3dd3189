package productform

// ImageField adapts the images collection to an upload widget that reports
// single-url additions and removals.
type ImageField struct {
	form *Form
}

// Add appends {url} to the collection as committed at call time. A fresh
// slice is committed each time, so snapshots returned earlier never change.
// Empty urls are ignored.
func (i *ImageField) Add(url string) {
	if url == "" {
		return
	}
	i.form.update(FieldImages, func(v *Values) {
		next := make([]Image, 0, len(v.Images)+1)
		next = append(next, v.Images...)
		v.Images = append(next, Image{URL: url})
	})
}

// Remove drops every entry whose url equals url. Removing an absent url
// leaves the collection unchanged.
func (i *ImageField) Remove(url string) {
	i.form.update(FieldImages, func(v *Values) {
		next := make([]Image, 0, len(v.Images))
		for _, img := range v.Images {
			if img.URL != url {
				next = append(next, img)
			}
		}
		v.Images = next
	})
}

// URLs lists the committed urls in display order.
func (i *ImageField) URLs() []string {
	i.form.mu.RLock()
	defer i.form.mu.RUnlock()
	urls := make([]string, len(i.form.values.Images))
	for n, img := range i.form.values.Images {
		urls[n] = img.URL
	}
	return urls
}

// Len returns the number of committed images.
func (i *ImageField) Len() int {
	i.form.mu.RLock()
	defer i.form.mu.RUnlock()
	return len(i.form.values.Images)
}
