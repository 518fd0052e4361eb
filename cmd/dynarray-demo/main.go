package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/pavanmanishd/dynarray"
)

type config struct {
	initialSize     int
	resizeTo        int
	defaultCapacity int
	maxBytes        uint64
	logLevel        string
}

func main() {
	var cfg config

	app := kingpin.New("dynarray-demo", "Exercise a dynarray.Array with resize, insert, erase and push/pop.")
	app.Flag("initial-size", "Size of the array at construction.").Default("1").IntVar(&cfg.initialSize)
	app.Flag("resize-to", "Size to resize the array to before inserting.").Default("20").IntVar(&cfg.resizeTo)
	app.Flag("default-capacity", "Capacity floor applied at construction.").Default(fmt.Sprint(dynarray.DefaultCapacity)).IntVar(&cfg.defaultCapacity)
	app.Flag("max-bytes", "Maximum bytes the array buffer may use, 0 for unlimited.").Default("0").Uint64Var(&cfg.maxBytes)
	app.Flag("log.level", "Only log messages with the given severity or above.").Default("info").EnumVar(&cfg.logLevel, "debug", "info", "warn", "error")
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := newLogger(os.Stderr, cfg.logLevel)
	if err := run(cfg, logger, os.Stdout); err != nil {
		level.Error(logger).Log("msg", "demo failed", "err", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, levelOption(lvl))
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

func levelOption(lvl string) level.Option {
	switch lvl {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

func run(cfg config, logger log.Logger, out io.Writer) error {
	metrics := dynarray.NewMetrics(prometheus.NewRegistry())
	arrCfg := dynarray.DefaultConfig()
	arrCfg.DefaultCapacity = cfg.defaultCapacity
	arrCfg.MaxBytes = cfg.maxBytes

	arr, err := dynarray.New[float64](cfg.initialSize,
		dynarray.WithConfig[float64](arrCfg),
		dynarray.WithLogger[float64](logger),
		dynarray.WithMetrics[float64](metrics),
	)
	if err != nil {
		return errors.Wrap(err, "create array")
	}
	defer arr.Release()

	fmt.Fprintln(out, arr.Len())

	if err := arr.Resize(cfg.resizeTo); err != nil {
		return errors.Wrapf(err, "resize to %d", cfg.resizeTo)
	}
	if _, err := arr.Insert(min(arr.Begin()+3, arr.End()), 8); err != nil {
		return errors.Wrap(err, "insert")
	}
	if err := arr.PushBack(3); err != nil {
		return errors.Wrap(err, "push back")
	}

	fmt.Fprintln(out, arr.Len())
	printElements(out, arr)

	arr.Erase(min(arr.Begin()+3, arr.End()-1))
	arr.PopBack()

	fmt.Fprintln(out, arr.Len())
	printElements(out, arr)

	// Reading past the end is reported rather than returning a stale slot.
	if err := checkedGet(arr, arr.Len()+2); err != nil {
		fmt.Fprintln(out, err)
	}

	m := arr.Metrics()
	level.Info(logger).Log(
		"msg", "array stats",
		"size", m.Size,
		"capacity", m.Capacity,
		"allocated", humanize.IBytes(uint64(m.BytesAllocated)),
		"in_use", humanize.IBytes(uint64(m.BytesInUse)),
		"utilization", fmt.Sprintf("%.2f", m.Utilization),
		"reallocations", testutil.ToFloat64(metrics.Reallocations),
	)
	return nil
}

func printElements(out io.Writer, arr *dynarray.Array[float64]) {
	for v := range arr.Values() {
		fmt.Fprint(out, v)
	}
	fmt.Fprintln(out)
}

func checkedGet(arr *dynarray.Array[float64], i int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			rangeErr, ok := r.(*dynarray.RangeError)
			if !ok {
				panic(r)
			}
			err = rangeErr
		}
	}()
	arr.Get(i)
	return nil
}
