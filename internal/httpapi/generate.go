package httpapi

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/John-Robertt/policygen-go/internal/classify"
	"github.com/John-Robertt/policygen-go/internal/document"
	"github.com/John-Robertt/policygen-go/internal/feature"
	"github.com/John-Robertt/policygen-go/internal/geodata"
	"github.com/John-Robertt/policygen-go/internal/model"
	"github.com/John-Robertt/policygen-go/internal/policy"
	"github.com/John-Robertt/policygen-go/internal/sub"
)

type generateHandler struct {
	opt    Options
	lookup classify.Lookup
}

// handleGenerate runs the whole pipeline on one request: body is the
// subscription payload, query parameters are the feature flags.
func (h generateHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, h.opt.MaxBodyBytes+1))
	if err != nil {
		writeErrorFromErr(w, apiError(http.StatusBadRequest, model.AppError{
			Code:    "READ_BODY_ERROR",
			Message: "读取请求体失败",
			Stage:   "validate_request",
		}, err))
		return
	}
	if int64(len(body)) > h.opt.MaxBodyBytes {
		writeErrorFromErr(w, requestError("PAYLOAD_TOO_LARGE", "订阅内容超出大小限制", fmt.Sprintf("max=%d bytes", h.opt.MaxBodyBytes)))
		return
	}

	out, err := Generate(string(body), feature.FromQuery(r.URL.Query()), h.lookup)
	if err != nil {
		writeErrorFromErr(w, err)
		return
	}

	genID := uuid.NewString()
	w.Header().Set("X-Generate-Id", genID)
	if err := setAttachmentHeaders(w, r.URL.Query().Get("filename")); err != nil {
		writeErrorFromErr(w, err)
		return
	}
	metricsIncGenerate(len(out))
	log.Printf("generate id=%s bytes=%d", genID, len(out))
	WriteYAML(w, http.StatusOK, out)
}

// Generate is the request-independent pipeline: payload + flags → YAML.
// The CLI's file mode calls this too.
func Generate(payload string, flags model.Flags, lookup classify.Lookup) ([]byte, error) {
	table := geodata.Default()

	proxies, err := sub.ParsePayload(payload)
	if err != nil {
		return nil, err
	}

	cls := classify.Classify(proxies, table, lookup)
	groups := policy.Assemble(cls, flags, table)

	cfg, err := document.Build(proxies, groups, flags)
	if err != nil {
		return nil, err
	}
	return cfg.Marshal()
}

func setAttachmentHeaders(w http.ResponseWriter, filename string) error {
	name := strings.TrimSpace(filename)
	if name == "" {
		name = "policy.yaml"
	}
	if strings.ContainsAny(name, "\r\n\x00") {
		return requestError("INVALID_ARGUMENT", "filename 含有非法控制字符", "")
	}
	if strings.ContainsAny(name, "/\\") {
		return requestError("INVALID_ARGUMENT", "filename 不允许包含路径分隔符", "")
	}
	if len(name) > 200 {
		return requestError("INVALID_ARGUMENT", "filename 过长", "max=200 bytes")
	}
	if !strings.Contains(name, ".") {
		name += ".yaml"
	}
	w.Header().Set("Content-Disposition", contentDispositionAttachment(name))
	return nil
}

func contentDispositionAttachment(filename string) string {
	// RFC 6266 + RFC 5987: filename and filename* for UTF-8 names.
	escaped := strings.ReplaceAll(filename, "\\", "\\\\")
	escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", escaped, pctEncode(filename))
}

func pctEncode(s string) string {
	// Go's QueryEscape uses '+' for spaces, which we rewrite to %20 for
	// stability and to avoid ambiguity.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
