package audit

import (
	"errors"
	"strconv"

	"github.com/cse-dept/cms-api/database"
	"github.com/cse-dept/cms-api/handlers/common"
	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/utils/pagination"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListAuditLogs retrieves admin audit logs with pagination
// GET /api/admin/audit-logs
func ListAuditLogs(c *fiber.Ctx, store database.Storage) error {
	db := store.GetDB().WithContext(c.UserContext())
	p := pagination.Parse(c, 20)

	query := db.Model(&model.AdminAuditLog{})

	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if resource := c.Query("resource"); resource != "" {
		query = query.Where("resource = ?", resource)
	}
	if adminIDStr := c.Query("admin_id"); adminIDStr != "" {
		if adminID, err := strconv.ParseUint(adminIDStr, 10, 32); err == nil {
			query = query.Where("admin_id = ?", adminID)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	logs := []model.AdminAuditLog{}
	if err := query.Order("created_at DESC, id DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&logs).Error; err != nil {
		return err
	}

	return response.Paginated(c, logs, response.CalculatePagination(p.Page, p.Limit, total))
}

// GetAuditLog retrieves a specific audit log entry
// GET /api/admin/audit-logs/:id
func GetAuditLog(c *fiber.Ctx, store database.Storage) error {
	logID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid log ID")
	}

	var entry model.AdminAuditLog
	if err := store.GetDB().WithContext(c.UserContext()).First(&entry, logID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Audit log not found")
		}
		return err
	}

	return response.Success(c, entry)
}
