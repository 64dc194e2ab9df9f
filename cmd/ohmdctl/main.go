package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/karalabe/usb"
	"github.com/spf13/cobra"

	_ "github.com/seagrayinc/gohmd/internal/drivers/dummy"
	_ "github.com/seagrayinc/gohmd/internal/drivers/hidhmd"
	"github.com/seagrayinc/gohmd/pkg/ohmd"
)

var (
	deviceIndex  int
	pollInterval time.Duration
	pollCount    int
)

func main() {
	root := &cobra.Command{
		Use:   "ohmdctl",
		Short: "Inspect and poll HMDs through the gohmd runtime",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Probe for devices and print the enumeration",
		RunE:  runList,
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Open a device and print its display geometry",
		RunE:  runInfo,
	}
	infoCmd.Flags().IntVarP(&deviceIndex, "device", "d", 0, "enumeration index")

	pollCmd := &cobra.Command{
		Use:   "poll",
		Short: "Open a device and poll its orientation",
		RunE:  runPoll,
	}
	pollCmd.Flags().IntVarP(&deviceIndex, "device", "d", 0, "enumeration index")
	pollCmd.Flags().DurationVarP(&pollInterval, "interval", "i", 15*time.Millisecond, "update cadence")
	pollCmd.Flags().IntVarP(&pollCount, "count", "n", 0, "number of samples to print, 0 for unlimited")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "List all raw USB devices (diagnostics when probe finds nothing)",
		RunE:  runScan,
	}

	root.AddCommand(listCmd, infoCmd, pollCmd, scanCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := ohmd.CreateContext()
	defer ctx.Destroy()

	n := ctx.Probe()
	fmt.Printf("%d device(s) found\n", n)
	for i := 0; i < n; i++ {
		fmt.Printf("  %d: %s / %s (%s)\n", i,
			ctx.ListGetString(i, ohmd.Vendor),
			ctx.ListGetString(i, ohmd.Product),
			ctx.ListGetString(i, ohmd.Path))
	}
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := ohmd.CreateContext()
	defer ctx.Destroy()

	ctx.Probe()
	dev := ctx.ListOpenDevice(deviceIndex)
	if dev == nil {
		return fmt.Errorf("open device %d: %s", deviceIndex, ctx.GetError())
	}

	var f [6]float32
	var n [2]int32
	printf1 := func(label string, key ohmd.FloatValue) {
		if dev.GetFloat(key, f[:]) == ohmd.StatusOK {
			fmt.Printf("  %-28s %f\n", label, f[0])
		}
	}

	fmt.Printf("%s / %s\n", dev.Info().Vendor, dev.Info().Product)
	if dev.GetInt(ohmd.ScreenHorizontalResolution, n[:1]) == ohmd.StatusOK &&
		dev.GetInt(ohmd.ScreenVerticalResolution, n[1:]) == ohmd.StatusOK {
		fmt.Printf("  %-28s %dx%d\n", "resolution", n[0], n[1])
	}
	printf1("screen horizontal size", ohmd.ScreenHorizontalSize)
	printf1("screen vertical size", ohmd.ScreenVerticalSize)
	printf1("lens separation", ohmd.LensHorizontalSeparation)
	printf1("lens vertical center", ohmd.LensVerticalPosition)
	printf1("left eye fov", ohmd.LeftEyeFOV)
	printf1("right eye fov", ohmd.RightEyeFOV)
	printf1("ipd", ohmd.EyeIPD)
	if dev.GetFloat(ohmd.DistortionK, f[:]) == ohmd.StatusOK {
		fmt.Printf("  %-28s %v\n", "distortion k", f)
	}
	return nil
}

func runPoll(cmd *cobra.Command, args []string) error {
	sigCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGINT,
	)
	defer stop()

	ctx := ohmd.CreateContext()
	defer ctx.Destroy()

	ctx.Probe()
	dev := ctx.ListOpenDevice(deviceIndex)
	if dev == nil {
		return fmt.Errorf("open device %d: %s", deviceIndex, ctx.GetError())
	}

	var quat [4]float32
	for i := 0; pollCount == 0 || i < pollCount; i++ {
		if sigCtx.Err() != nil {
			break
		}
		ctx.Update()
		if dev.GetFloat(ohmd.RotationQuat, quat[:]) != ohmd.StatusOK {
			return fmt.Errorf("read orientation: %s", ctx.GetError())
		}
		fmt.Printf("quat: % .4f % .4f % .4f % .4f\r", quat[0], quat[1], quat[2], quat[3])
		time.Sleep(pollInterval)
	}
	fmt.Println()
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	infos, err := usb.Enumerate(0, 0)
	if err != nil {
		return fmt.Errorf("usb enumerate: %w", err)
	}
	fmt.Printf("%d USB device(s)\n", len(infos))
	for _, info := range infos {
		fmt.Printf("  %04x:%04x %s %s (%s)\n",
			info.VendorID, info.ProductID, info.Manufacturer, info.Product, info.Path)
	}
	return nil
}
