package handler

import (
	"hospital-management-backend/internal/middleware"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// resolveCaller turns the authenticated principal into a caller context.
// Unregistered principals are rejected here, which is why registration and
// the registration check are the only operations that skip this helper.
func resolveCaller(c *gin.Context, access *service.AccessService) (*service.Caller, bool) {
	principal := c.GetString(middleware.CallerKey)
	caller, err := access.Resolve(principal)
	if err != nil {
		utils.HandleError(c, err)
		return nil, false
	}
	return caller, true
}
