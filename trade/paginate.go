package trade

// FetchPageSize is the most result IDs the fetch endpoint accepts in
// one request.
const FetchPageSize = 10

// paginate splits an ordered ID list into consecutive batches of at
// most pageSize, preserving order. Every batch is non-empty; nothing
// is dropped or duplicated. An empty input yields no batches.
func paginate(ids []string, pageSize int) [][]string {
	if len(ids) == 0 {
		return nil
	}
	if len(ids) <= pageSize {
		return [][]string{ids}
	}

	batches := make([][]string, 0, (len(ids)+pageSize-1)/pageSize)
	for start := 0; start < len(ids); start += pageSize {
		end := start + pageSize
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}
	return batches
}
