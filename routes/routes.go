package routes

// Routes package cung cấp tất cả routing functions cho Election Directory
// Service
//
// Cấu trúc:
// - api.go: API routes (/v1/*), middleware
// - web.go: Web routes (/, /docs, /status)
// - routes.go: Export functions
//
// Sử dụng:
// routes.SetupAllRoutes(router, metrics, directoryController, detailController, adminController)
