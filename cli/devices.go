package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/gousb"
	"github.com/mvbdecode/mvbdecode/config"
	"github.com/spf13/cobra"
	"go.bug.st/serial/enumerator"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List candidate MVB capture devices",
	Long: `Scans attached serial ports and USB devices for VID/PID matches
against the configured device registry, reporting each known MVB bus
analyzer or capture adapter that is currently attached.`,
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := enumerator.GetDetailedPortsList()
		if err != nil {
			cobra.CheckErr(fmt.Errorf("failed to list serial ports: %w", err))
		}

		found := 0
		for _, port := range ports {
			for _, dev := range config.Devices {
				if dev.Transport != "serial" {
					continue
				}
				if !strings.EqualFold(port.VID, dev.VendorID) || !strings.EqualFold(port.PID, dev.ProductID) {
					continue
				}
				fmt.Printf("%s  serial  %s  (%s:%s, %d baud)\n", port.Name, dev.Name, dev.VendorID, dev.ProductID, dev.BaudRate)
				found++
			}
		}

		ctx := gousb.NewContext()
		defer ctx.Close()

		for _, dev := range config.Devices {
			if dev.Transport != "usb" {
				continue
			}
			vid, err1 := strconv.ParseUint(dev.VendorID, 16, 16)
			pid, err2 := strconv.ParseUint(dev.ProductID, 16, 16)
			if err1 != nil || err2 != nil {
				continue
			}

			usbDev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vid), gousb.ID(pid))
			if err != nil || usbDev == nil {
				continue
			}
			usbDev.Close()

			fmt.Printf("usb:%04x:%04x  usb     %s  (endpoint %d)\n", vid, pid, dev.Name, dev.Endpoint)
			found++
		}

		if found == 0 {
			fmt.Println("no capture devices matching the configured registry are attached")
		}
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
