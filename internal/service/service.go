package service

// timeFormat is the timestamp layout used in all responses
const timeFormat = "2006-01-02T15:04:05Z07:00"

// normalizePagination clamps page and pageSize to sane defaults
func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
