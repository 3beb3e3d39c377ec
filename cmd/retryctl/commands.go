package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/retryblock/pkg/config/xretrycfg"
	"github.com/omeyang/retryblock/pkg/resilience/xdelay"
	"github.com/omeyang/retryblock/pkg/resilience/xretry"
)

// exitError 表示需要非零退出码但已完成输出的场景。
// 命令内部已完成所有输出，main 只需设置退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// usageError 表示参数错误，映射到退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// planLimit 不限次数时 plan 打印的最大条目数。
const planLimit = 16

// strategyFlags 返回 run 和 plan 共用的策略选项。
func strategyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "从 YAML/JSON 配置文件加载策略",
		},
		&cli.StringFlag{
			Name:    "strategy",
			Aliases: []string{"s"},
			Usage:   "延迟策略: fixed / exponential / fibonacci / none",
			Value:   "exponential",
		},
		&cli.DurationFlag{
			Name:    "base",
			Aliases: []string{"b"},
			Usage:   "基础延迟",
			Value:   100 * time.Millisecond,
		},
		&cli.FloatFlag{
			Name:    "factor",
			Aliases: []string{"f"},
			Usage:   "指数增长因子 (0 表示使用策略默认值)",
		},
		&cli.IntFlag{
			Name:    "attempts",
			Aliases: []string{"a"},
			Usage:   "最大重试次数, 不含首次尝试 (负数表示不限)",
			Value:   5,
		},
		&cli.DurationFlag{
			Name:  "bound",
			Usage: "延迟总和预算 (0 表示无预算)",
		},
		&cli.BoolFlag{
			Name:  "jitter",
			Usage: "对基础延迟施加一次随机抖动",
		},
	}
}

// templateFromFlags 根据命令行选项构建延迟序列模板。
func templateFromFlags(cmd *cli.Command) (xdelay.Template, error) {
	if path := cmd.String("config"); path != "" {
		cfg, err := xretrycfg.Load(path)
		if err != nil {
			return nil, err
		}
		return cfg.Template(), nil
	}

	return buildTemplate(
		cmd.String("strategy"),
		cmd.Duration("base"),
		cmd.Float("factor"),
		cmd.Int("attempts"),
		cmd.Duration("bound"),
		cmd.Bool("jitter"),
	)
}

// buildTemplate 从独立的策略参数构建延迟序列模板。
func buildTemplate(strategy string, base time.Duration, factor float64, attempts int, bound time.Duration, jitter bool) (xdelay.Template, error) {
	var tmpl xdelay.Template

	switch strategy {
	case "fixed":
		if jitter {
			tmpl = xdelay.NewFixed(base)
		} else {
			tmpl = xdelay.NewFixedExact(base)
		}
	case "exponential":
		switch {
		case factor > 0 && jitter:
			tmpl = xdelay.NewExponentialWithFactor(base, factor)
		case factor > 0:
			tmpl = xdelay.NewExponentialExactWithFactor(base, factor)
		case jitter:
			tmpl = xdelay.NewExponential(base)
		default:
			tmpl = xdelay.NewExponentialExact(base)
		}
	case "fibonacci":
		if jitter {
			tmpl = xdelay.NewFibonacci(base)
		} else {
			tmpl = xdelay.NewFibonacciExact(base)
		}
	case "none":
		tmpl = xdelay.NoDelay{}
	default:
		return nil, &usageError{msg: fmt.Sprintf("未知策略 %q", strategy)}
	}

	if bound > 0 {
		tmpl = xdelay.Bound(tmpl, bound)
	}
	if attempts >= 0 {
		tmpl = xdelay.Take(tmpl, attempts)
	}
	return tmpl, nil
}

// createRunCommand 创建 run 子命令。
func createRunCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "以重试策略运行外部命令",
		ArgsUsage: "-- <cmd> [args...]",
		Flags:     strategyFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) == 0 {
				return &usageError{msg: "缺少要执行的命令"}
			}

			tmpl, err := templateFromFlags(cmd)
			if err != nil {
				var usageErr *usageError
				if errors.As(err, &usageErr) {
					return err
				}
				return &usageError{msg: err.Error()}
			}

			return cmdRun(ctx, tmpl, args)
		},
	}
}

// cmdRun 按延迟计划反复执行外部命令直到成功或重试耗尽。
func cmdRun(ctx context.Context, tmpl xdelay.Template, args []string) error {
	var attempt int
	_, err := xretry.DoContext(ctx, tmpl.Sequence(),
		func(ctx context.Context) xretry.Outcome[int] {
			attempt++
			if attempt > 1 {
				fmt.Fprintf(os.Stderr, "retryctl: 第 %d 次尝试\n", attempt)
			}
			return runOnce(ctx, args)
		})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			fmt.Fprintf(os.Stderr, "retryctl: 已中断: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "retryctl: 重试耗尽: %v\n", err)
		}
		return &exitError{code: 1}
	}
	return nil
}

// runOnce 执行一次外部命令并分类结果：
// 非零退出视为瞬时失败（可重试），无法启动视为永久失败。
func runOnce(ctx context.Context, args []string) xretry.Outcome[int] {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return xretry.OK(0)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return xretry.Retry[int](fmt.Errorf("%s: %w", args[0], err))
	}
	return xretry.Fail[int](fmt.Errorf("%s: %w", args[0], err))
}

// createPlanCommand 创建 plan 子命令。
func createPlanCommand() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "打印延迟计划（不执行任何命令）",
		Flags: strategyFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			tmpl, err := templateFromFlags(cmd)
			if err != nil {
				var usageErr *usageError
				if errors.As(err, &usageErr) {
					return err
				}
				return &usageError{msg: err.Error()}
			}

			printPlan(os.Stdout, tmpl)
			return nil
		},
	}
}

// printPlan 打印延迟计划的前若干项及累计等待时间。
func printPlan(w io.Writer, tmpl xdelay.Template) {
	delays := tmpl.Sequence()
	var total time.Duration

	for i := 1; i <= planLimit; i++ {
		d, ok := delays.Next()
		if !ok {
			fmt.Fprintf(w, "共 %d 次重试, 累计等待 %s\n", i-1, total)
			return
		}
		total += d
		fmt.Fprintf(w, "%2d  %-12s (累计 %s)\n", i, d, total)
	}
	fmt.Fprintf(w, "... (仅显示前 %d 项)\n", planLimit)
}
