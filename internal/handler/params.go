package handler

import (
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
)

// parseIDParam 路径里的数字 id，解析失败返回 0/false
func parseIDParam(c *app.RequestContext, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
