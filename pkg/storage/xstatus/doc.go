// Package xstatus 提供 xpersist.Injector 的现成存储绑定。
//
// # 设计理念
//
// xpersist 把持久化抽象为 Injector 能力接口，本包提供两个开箱即用
// 的实现：
//   - RedisInjector：基于 go-redis，一个命名空间对应一个 Redis hash，
//     字段为标识符、值为 JSON 编码的状态记录
//   - MongoInjector：基于 mongo-driver v2，一个文档对应一个标识符，
//     以 upsert 写入
//
// 两个实现都把标识符固定为 string：存储层的键天然是字符串，需要
// 其他标识符类型的调用方在外层转换即可。
//
// # 错误状态的编码
//
// Failure 状态的错误以消息字符串形式存储。从存储加载后无法恢复
// 原始错误链（errors.Is / errors.As 对重建的错误不再匹配原哨兵），
// 这是跨进程持久化的固有代价。
package xstatus
