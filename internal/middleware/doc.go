// Package middleware 提供了 HTTP 請求處理的中間件。
//
// 這個包包含了跨請求的功能：請求編號、結構化請求日誌與 CORS。
// 身分由前端直接帶入請求內容，這裡不做身份驗證。
package middleware
