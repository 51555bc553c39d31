package handler

import (
	"net/http"

	"github.com/familyboard/familyboard/internal/wish"
	"github.com/familyboard/familyboard/internal/wish/service"
	"github.com/familyboard/familyboard/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	msgCreated = "Пожелание успешно отправлено бабушке!"
	errLoad    = "Ошибка сервера при чтении пожеланий"
	errSave    = "Ошибка при сохранении пожелания"
)

func RegisterWishRoutes(r gin.IRouter, svc service.Service) {
	r.GET("/api/wishes", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context())
		if err != nil {
			response.Error(c, err, "", errLoad)
			return
		}
		response.OK(c, gin.H{"count": len(list), "data": list})
	})

	r.POST("/api/wishes", func(c *gin.Context) {
		var in wish.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Fail(c, http.StatusBadRequest, response.MsgFieldsRequired)
			return
		}
		created, total, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			response.Error(c, err, "", errSave)
			return
		}
		response.OK(c, gin.H{"message": msgCreated, "data": created, "totalWishes": total})
	})
}
