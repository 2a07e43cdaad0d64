package collector

import (
	"context"
	"strings"
	"sync"
)

const (
	linuxMeminfo = `MemTotal:       16326428 kB
MemFree:         1183220 kB
MemAvailable:    8163214 kB
Buffers:          402116 kB
Cached:          6751112 kB
`

	darwinVMStat = `Mach Virtual Memory Statistics: (page size of 16384 bytes)
Pages free:                               65536.
Pages active:                            410000.
Pages inactive:                          196608.
Pages speculative:                         9000.
Pages wired down:                        150000.
`

	linuxPS = `USER         PID %CPU %MEM    VSZ   RSS TTY      STAT START   TIME COMMAND
mysql       1234  2.5 12.3 2456780 2015000 ?     Ssl  Jan01  10:12 /usr/sbin/mysqld --basedir=/usr
www-data    2345  0.3  4.1 456780 671000 ?       S    Jan01   0:42 /usr/lib/jvm/java-17-openjdk-amd64/bin/java-launcher-wrapper -Xmx2g
root           1  0.0  0.1 169000 13000 ?        Ss   Jan01   0:05 /sbin/init splash
`

	linuxUptime = ` 10:14:03 up 12 days,  3:47,  2 users,  load average: 0.52, 0.58, 0.59
`

	darwinUptime = `10:14  up 3 days, 22:01, 4 users, load averages: 2.31 1.98 1.75
`

	linuxDF = `Filesystem      Size  Used Avail Use% Mounted on
/dev/nvme0n1p2  468G  201G  244G  46% /
`
)

// fakeRunner 按命令行返回固定输出
type fakeRunner struct {
	mu       sync.Mutex
	commands map[string]string
	files    map[string]string
	calls    []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		commands: make(map[string]string),
		files:    make(map[string]string),
	}
}

func (f *fakeRunner) withCommand(cmdline, output string) *fakeRunner {
	f.commands[cmdline] = output
	return f
}

func (f *fakeRunner) withFile(path, content string) *fakeRunner {
	f.files[path] = content
	return f
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, bool) {
	cmdline := strings.Join(append([]string{name}, args...), " ")

	f.mu.Lock()
	f.calls = append(f.calls, cmdline)
	f.mu.Unlock()

	out, ok := f.commands[cmdline]
	if !ok || strings.TrimSpace(out) == "" {
		return "", false
	}
	return out, true
}

func (f *fakeRunner) ReadFile(path string) (string, bool) {
	content, ok := f.files[path]
	if !ok || content == "" {
		return "", false
	}
	return content, true
}

// linuxHost 一台各命令都可用的Linux主机
func linuxHost() *fakeRunner {
	return newFakeRunner().
		withFile("/proc/meminfo", linuxMeminfo).
		withCommand("ps aux --sort=-%mem", linuxPS).
		withCommand("uptime", linuxUptime).
		withCommand("df -h /", linuxDF).
		withCommand("hostname", "web-01\n")
}
