package services

// PagedResult is the envelope every listing operation returns. Pages are
// 1-indexed; concatenating pages 1..Pages yields each matching item
// exactly once in the declared order.
type PagedResult struct {
	Items       []map[string]interface{} `json:"items"`
	Total       int64                    `json:"total"`
	Pages       int                      `json:"pages"`
	CurrentPage int                      `json:"current_page"`
}

const defaultPerPage = 10

// normalizePage clamps paging inputs to sane values.
func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	return page, perPage
}

func pageCount(total int64, perPage int) int {
	return int((total + int64(perPage) - 1) / int64(perPage))
}

func newPagedResult(items []map[string]interface{}, total int64, page, perPage int) *PagedResult {
	if items == nil {
		items = []map[string]interface{}{}
	}
	return &PagedResult{
		Items:       items,
		Total:       total,
		Pages:       pageCount(total, perPage),
		CurrentPage: page,
	}
}
