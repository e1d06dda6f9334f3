package response

// 系统级错误码（直接基于 HTTP 语义）
const (
	CodeOK          = 0
	CodeBadRequest  = 400
	CodeNotFound    = 404
	CodeServerError = 500
)

// CodeMsgMap 集中管理 code - msg
var CodeMsgMap = map[int]string{
	CodeOK:          "OK",
	CodeBadRequest:  "Bad Request",
	CodeNotFound:    "Not Found",
	CodeServerError: "Internal Server Error",
}
