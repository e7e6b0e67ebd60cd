package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs the custom query validators on gin's
// binding engine. Call once at startup before routes are served.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
}

// pathID parses a numeric path parameter, answering 400 itself when the
// value is not a positive integer.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// bindQuery binds and validates query parameters, answering 400 itself on
// failure.
func bindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// queryError answers 500 and logs the failure with a truncated excerpt of
// the statement, enough to identify the query without flooding the log.
func queryError(c *gin.Context, err error, query string) {
	excerpt := query
	if len(excerpt) > 200 {
		excerpt = excerpt[:200] + "..."
	}
	log.Printf("query failed: %v (query: %s)", err, excerpt)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
