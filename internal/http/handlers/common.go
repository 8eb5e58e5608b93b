package handlers

import (
	"advocates/internal/domain"

	"github.com/gin-gonic/gin"
)

// queryRequest reads q/page/pageSize; bad numbers silently become defaults.
func queryRequest(c *gin.Context, defaultPageSize int) domain.QueryRequest {
	return domain.ParseQueryRequest(
		c.Query(domain.QueryParamSearch),
		c.Query(domain.QueryParamPage),
		c.Query(domain.QueryParamPageSize),
		defaultPageSize,
	)
}
