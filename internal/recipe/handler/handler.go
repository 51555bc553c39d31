package handler

import (
	"net/http"
	"strconv"

	"github.com/familyboard/familyboard/internal/recipe"
	"github.com/familyboard/familyboard/internal/recipe/service"
	"github.com/familyboard/familyboard/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	msgCreated  = "Рецепт успешно сохранён на сервере!"
	msgDeleted  = "Рецепт удалён"
	msgNotFound = "Рецепт не найден"
	errLoad     = "Ошибка сервера при чтении рецептов"
	errSave     = "Ошибка при сохранении рецепта"
	errDelete   = "Ошибка при удалении рецепта"
)

func RegisterRecipeRoutes(r gin.IRouter, svc service.Service) {
	r.GET("/api/recipes", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context())
		if err != nil {
			response.Error(c, err, "", errLoad)
			return
		}
		response.OK(c, gin.H{"count": len(list), "data": list})
	})

	r.POST("/api/recipes", func(c *gin.Context) {
		var in recipe.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Fail(c, http.StatusBadRequest, response.MsgFieldsRequired)
			return
		}
		created, total, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			response.Error(c, err, "", errSave)
			return
		}
		response.OK(c, gin.H{"message": msgCreated, "data": created, "totalRecipes": total})
	})

	r.DELETE("/api/recipes/:id", func(c *gin.Context) {
		// a non-numeric id can never match a stored record
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			response.Fail(c, http.StatusNotFound, msgNotFound)
			return
		}
		total, err := svc.Delete(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err, msgNotFound, errDelete)
			return
		}
		response.OK(c, gin.H{"message": msgDeleted, "totalRecipes": total})
	})
}
