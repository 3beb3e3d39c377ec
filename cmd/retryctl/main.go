// retryctl 以重试策略运行外部命令。
//
// 用法:
//
//	retryctl [全局选项] <命令> [命令参数]
//
// 命令:
//
//	run  -- <cmd> [args...]   以重试策略运行外部命令
//	plan                      打印延迟计划（不执行任何命令）
//	help                      显示帮助信息
//
// 策略选项（run 和 plan 共用）:
//
//	--config, -c    从 YAML/JSON 配置文件加载策略（优先于其余策略选项）
//	--strategy, -s  延迟策略: fixed / exponential / fibonacci / none (默认: exponential)
//	--base, -b      基础延迟 (默认: 100ms)
//	--factor, -f    指数增长因子 (默认: 0, 表示使用策略默认值)
//	--attempts, -a  最大重试次数, 不含首次尝试 (默认: 5, 负数表示不限)
//	--bound         延迟总和预算 (默认: 0, 表示无预算)
//	--jitter        对基础延迟施加一次随机抖动
//
// 退出码:
//
//	0: 命令最终成功
//	1: 重试耗尽或命令永久失败
//	2: 参数错误（未知策略、缺少命令等）
//
// 示例:
//
//	retryctl run -- curl -sf https://example.com/health
//	retryctl run -s fibonacci -b 50ms -a 8 -- ./flaky-job
//	retryctl run -c retry.yaml -- pg_isready -h db
//	retryctl plan -s exponential -b 1s -f 2 -a 5 --bound 30s
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "retryctl",
		Usage:   "以重试策略运行外部命令",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Commands: []*cli.Command{
			createRunCommand(),
			createPlanCommand(),
		},
		DefaultCommand: "help",
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
}

func run() int {
	app := createApp()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, os.Args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}
