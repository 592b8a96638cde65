package v1

import (
	"time"

	ez_uuid "github.com/spendwise/backend/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URICard struct {
	URIID
	CardID ez_uuid.UUID `uri:"cardId" binding:"required" format:"UUID"` // ID of the card
}

type URISpend struct {
	URIID
	SpendID ez_uuid.UUID `uri:"spendId" binding:"required" format:"UUID"` // ID of the spend
}

type QueryMonth struct {
	Month time.Time `form:"month" time_format:"2006-01" time_utc:"1" example:"2024-06"` // Year and month in YYYY-MM format
}

type QueryNow struct {
	Now time.Time `form:"now" time_format:"2006-01-02" time_utc:"1" example:"2024-06-20"` // The current day in YYYY-MM-DD format
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}
