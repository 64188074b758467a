package controller

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"qa_judge_backend/internal/model"
	"qa_judge_backend/internal/service"
	"qa_judge_backend/internal/util"
	"qa_judge_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UploadController struct {
	Import  *service.ImportService
	Storage *service.StorageService
}

func NewUploadController(importSvc *service.ImportService, storage *service.StorageService) *UploadController {
	return &UploadController{Import: importSvc, Storage: storage}
}

type importResponse struct {
	*service.ImportResult
	ArchiveURL string `json:"archiveUrl,omitempty"`
}

// @Summary 导入提交数据
// @Description 上传 JSON 文件，导入 submissions/questions/answers；结构错误整体拒绝，单项落库失败记录消息后继续
// @Tags 导入
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "导入文件(.json)"
// @Success 200 {object} util.Response
// @Router /api/import [post]
func (c *UploadController) ImportFile(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	if !strings.HasSuffix(fileHeader.Filename, ".json") {
		util.BadRequest(ctx, "please upload a .json file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		util.BadRequest(ctx, util.ErrEmptyImportDoc.Error())
		return
	}

	// 结构校验失败对整次导入是致命的，任何行都不会写入
	data, err := service.ParseImportJSON(string(raw))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	// 先归档原始文件再落库；归档失败不阻断导入
	archiveName := fmt.Sprintf("imports/%s_%s.json", time.Now().Format("20060102T150405"), model.GenerateUUID())
	archiveURL, err := c.Storage.Upload(ctx.Request.Context(), archiveName, bytes.NewReader(raw), int64(len(raw)), "application/json")
	if err != nil {
		logger.Log.Warn("failed to archive import file", zap.Error(err))
		archiveURL = ""
	}

	result := c.Import.Load(ctx.Request.Context(), data)

	util.Success(ctx, importResponse{ImportResult: result, ArchiveURL: archiveURL})
}
