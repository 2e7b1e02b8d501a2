// roslog - ROS Telemetry Log Parser
//
// roslog turns ROS telemetry logs into monotonic per-channel time series and
// renders them as charts.
package main

import (
	"os"

	"github.com/ccollicutt/roslog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
