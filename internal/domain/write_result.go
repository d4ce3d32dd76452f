package domain

// WriteResult mirrors the document-store write summary returned to the client
type WriteResult struct {
	Acknowledged  bool   `json:"acknowledged"`
	InsertedID    string `json:"insertedId,omitempty"`
	MatchedCount  *int64 `json:"matchedCount,omitempty"`
	ModifiedCount *int64 `json:"modifiedCount,omitempty"`
	DeletedCount  *int64 `json:"deletedCount,omitempty"`
}

func InsertResult(id string) *WriteResult {
	return &WriteResult{Acknowledged: true, InsertedID: id}
}

func UpdateResult(matched, modified int64) *WriteResult {
	return &WriteResult{Acknowledged: true, MatchedCount: &matched, ModifiedCount: &modified}
}

func DeleteResult(deleted int64) *WriteResult {
	return &WriteResult{Acknowledged: true, DeletedCount: &deleted}
}
