package response

import (
	"errors"
	"log"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"tasktracker/services"
)

var registerOnce sync.Once

// UseJSONFieldNames makes gin's binding validator report fields by their JSON
// names so bind errors read "title is required" rather than "Title".
func UseJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
}

// Error writes the status that matches a service error. Anything unexpected
// is logged and reported as a generic 500.
func Error(c *gin.Context, err error) {
	switch services.KindOf(err) {
	case services.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": services.MessageOf(err)})
	case services.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.MessageOf(err)})
	case services.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": services.MessageOf(err)})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// BindError reports a request body that could not be decoded or failed its
// binding rules.
func BindError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Tag() == "required" {
			c.JSON(http.StatusBadRequest, gin.H{"error": fe.Field() + " is required"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": fe.Field() + " is invalid"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}
