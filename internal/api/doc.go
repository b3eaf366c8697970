// Package api 處理 HTTP 請求路由和處理。
//
// 這個包包含了所有的 HTTP 處理器（handlers）。
// 它負責驗證請求內容、呼叫對應的服務，並回傳簡短的狀態確認；
// 完整狀態由前端輪詢 GET /api/session/current 取得。
package api
