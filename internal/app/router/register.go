package router

import "github.com/gin-gonic/gin"

// 每个模块提供一个 Register(Route) 函数，实现下面签名：
type Registrar interface{ Register(r *gin.Engine) }

// 全局注册表（集中声明要装配的模块）
var registrars []Registrar

// Register adds modules to the global registry.
func Register(rs ...Registrar) { registrars = append(registrars, rs...) }

// MountAll mounts every registered module on r.
func MountAll(r *gin.Engine) { Mount(r, registrars...) }

// Mount mounts the given modules on r without touching the registry.
func Mount(r *gin.Engine, rs ...Registrar) {
	for _, rg := range rs {
		rg.Register(r)
	}
}
