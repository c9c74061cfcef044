package request

// ReturnItemRequest represents one returned line
type ReturnItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Reason    string `json:"reason" binding:"required"`
}

// CreateReturnRequest represents a merchandise return request. Photo
// evidence is uploaded separately as multipart once the return exists.
type CreateReturnRequest struct {
	OrderID string              `json:"order_id" binding:"required,uuid"`
	ShopID  string              `json:"shop_id" binding:"required,uuid"`
	Items   []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ApproveReturnRequest adjudicates a pending return
type ApproveReturnRequest struct {
	DecisionNote    *string `json:"decision_note"`
	IssueCreditNote bool    `json:"issue_credit_note"`
	Restock         bool    `json:"restock"`
}

// RejectReturnRequest rejects a pending return
type RejectReturnRequest struct {
	DecisionNote *string `json:"decision_note"`
}

// ReturnFilterRequest represents return list query parameters
type ReturnFilterRequest struct {
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Status    string `form:"status"`
	ShopID    string `form:"shop_id"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}
