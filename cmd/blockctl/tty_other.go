//go:build !unix

package main

func isTTY() bool { return false }
