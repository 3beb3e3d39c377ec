// Package xretrycfg 从配置文件加载重试配置。
//
// 支持 YAML 和 JSON 两种格式，文件加载时根据扩展名自动检测格式，
// 字节加载时显式指定。加载结果为校验通过的 xdelay.Config，随后可用
// Config.Template() 派生延迟序列模板。
//
// 配置来自运行期输入，所有失败都以错误返回，本包不 panic。
package xretrycfg
