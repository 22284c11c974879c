package backend

import "strings"

// ImageSource picks the address a page should render for a generated image.
// An inline base64 payload wins over a hosted reference; when neither is
// present the result is empty and the caller renders a placeholder.
func ImageSource(baseURL, imageURL, imageBase64 string) string {
	if imageBase64 != "" {
		if strings.HasPrefix(imageBase64, "data:") {
			return imageBase64
		}
		return "data:image/png;base64," + imageBase64
	}
	if imageURL == "" {
		return ""
	}
	return ResolveImageRef(baseURL, imageURL)
}

// ResolveImageRef resolves a hosted image reference. Static-relative paths
// and fully qualified addresses pass through verbatim; anything else is
// joined onto the backend base address.
func ResolveImageRef(baseURL, ref string) string {
	if strings.HasPrefix(ref, "/static") {
		return ref
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "data:") {
		return ref
	}
	base := strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return base + ref
}
