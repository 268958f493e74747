package utils

import (
	"encoding/json"
	"net"

	"calendar-admin-server/models"
	"calendar-admin-server/storage"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

// Audit records an admin calendar mutation with before/after snapshots.
// Auditing is best effort and only available on the database backend.
func Audit(ctx iris.Context, action, date string, before interface{}, after interface{}) {
	if storage.DB == nil {
		return
	}

	var beforeJSON, afterJSON []byte
	if before != nil {
		beforeJSON, _ = json.Marshal(before)
	}
	if after != nil {
		afterJSON, _ = json.Marshal(after)
	}

	var adminID uint
	if tok := jsonWT.Get(ctx); tok != nil {
		if at, ok := tok.(*AccessToken); ok {
			adminID = at.ID
		}
	}

	entry := models.AuditLog{
		AdminUserID: adminID,
		Action:      action,
		Date:        date,
		Before:      beforeJSON,
		After:       afterJSON,
		IPAddress:   clientIP(ctx),
	}
	storage.DB.Create(&entry)
}

func clientIP(ctx iris.Context) string {
	if ip := ctx.GetHeader("X-Forwarded-For"); ip != "" {
		return ip
	}
	ip, _, _ := net.SplitHostPort(ctx.RemoteAddr())
	return ip
}
