// Package storage 提供数据存储相关的子包。
//
// 子包列表：
//   - xstatus: xpersist.Injector 的存储绑定（Redis、MongoDB）
package storage
