package handlers

import (
	"net/http"
	"strconv"

	"advocates/internal/domain"
	"advocates/internal/http/middleware"
	"advocates/internal/services"

	"github.com/gin-gonic/gin"
)

// Store backs every advocate handler; nil means the shared database repository.
var Store services.AdvocateStore

func advocateService(c *gin.Context) services.AdvocateService {
	return services.AdvocateService{Store: Store, RequestID: middleware.GetRequestID(c)}
}

// GET /api/advocates?q=&page=&pageSize=
func SearchAdvocates(c *gin.Context) {
	req := queryRequest(c, domain.DefaultPageSize)
	page, err := advocateService(c).Search(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/advocates/:id
func GetAdvocate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "must be a positive integer", Err: err})
		return
	}
	a, err := advocateService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// GET /api/exports/advocates?q=&page=&pageSize=
func ExportAdvocatesPDF(c *gin.Context) {
	req := queryRequest(c, domain.DefaultPageSize)
	svc := services.ExportService{
		Search:    advocateService(c),
		RequestID: middleware.GetRequestID(c),
	}
	body, filename, err := svc.GeneratePDF(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", body)
}
