//go:build darwin

package chart

import "os/exec"

func openBrowser(url string) error {
	return exec.Command("open", url).Start()
}
