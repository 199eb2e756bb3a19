package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/pojntfx/corsfs/internal/check"
	"github.com/pojntfx/corsfs/internal/logging"
	"github.com/pojntfx/corsfs/pkg/config"
	"github.com/pojntfx/corsfs/pkg/fileserver"
	"github.com/pojntfx/corsfs/pkg/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	portArg = "port"

	bindFlag              = "bind"
	dirFlag               = "dir"
	compressionFlag       = "compression"
	maxConnectionsFlag    = "max-connections"
	readHeaderTimeoutFlag = "read-header-timeout"
	idleTimeoutFlag       = "idle-timeout"
	verboseFlag           = "verbose"
)

func argumentError(arg, value string, err error) error {
	return &config.ArgumentError{Arg: arg, Value: value, Err: err}
}

// NewRootCmd creates the corsfs command. Configuration is read from flags and
// from CORSFS_-prefixed environment variables.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "corsfs <port>",
		Short: "Simple HTTP server with CORS",
		Long: `Simple HTTP server with CORS (corsfs) serves the working directory over HTTP
and adds permissive CORS headers to every response.

Find more information at:
https://github.com/pojntfx/corsfs`,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				if len(args) == 0 {
					return argumentError(portArg, "", config.ErrPortMissing)
				}

				return argumentError(portArg, strings.Join(args, " "), config.ErrTooManyArguments)
			}

			port, err := check.CheckPort(args[0])
			if err != nil {
				return argumentError(portArg, args[0], err)
			}

			cfg.Port = port

			return nil
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			v.SetEnvPrefix("corsfs")
			v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
			v.AutomaticEnv()

			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}

			if err := check.CheckBindAddress(v.GetString(bindFlag)); err != nil {
				return argumentError(bindFlag, v.GetString(bindFlag), err)
			}

			if err := check.CheckCompressionFormat(v.GetString(compressionFlag)); err != nil {
				return argumentError(compressionFlag, v.GetString(compressionFlag), err)
			}

			if err := check.CheckVerbosity(v.GetInt(verboseFlag)); err != nil {
				return argumentError(verboseFlag, v.GetString(verboseFlag), err)
			}

			root, err := filepath.Abs(v.GetString(dirFlag))
			if err != nil {
				return argumentError(dirFlag, v.GetString(dirFlag), err)
			}

			if err := check.CheckRoot(root); err != nil {
				return argumentError(dirFlag, root, err)
			}

			cfg.BindAddress = v.GetString(bindFlag)
			cfg.Root = root
			cfg.Compression = v.GetString(compressionFlag)
			cfg.MaxConnections = v.GetInt(maxConnectionsFlag)
			cfg.ReadHeaderTimeout = v.GetDuration(readHeaderTimeoutFlag)
			cfg.IdleTimeout = v.GetDuration(idleTimeoutFlag)

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid, so later errors are not usage errors
			cmd.SilenceUsage = true

			log := logging.NewJSONLogger(cmd.ErrOrStderr(), v.GetInt(verboseFlag))

			fs, err := fileserver.NewOSFileSystem(cfg.Root)
			if err != nil {
				return err
			}

			srv := server.NewServer(&cfg, fs, log)
			if err := srv.Listen(); err != nil {
				return err
			}

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Serving on %v port %v\n", cfg.BindAddress, srv.Port()); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Serve(ctx)
		},
	}

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return argumentError("flags", "", err)
	})

	cmd.Flags().StringP(bindFlag, "b", config.DefaultBindAddress, "IP address or hostname to bind the server to")
	cmd.Flags().StringP(dirFlag, "d", ".", "Directory to serve")
	cmd.Flags().StringP(compressionFlag, "c", config.NoneKey, fmt.Sprintf("Response compression to use (default none, available are %v)", config.KnownCompressionFormats))
	cmd.Flags().IntP(maxConnectionsFlag, "m", 0, "Maximum amount of concurrent connections (0 for unlimited)")
	cmd.Flags().Duration(readHeaderTimeoutFlag, 0, "Time allowed to read request headers (0 for no timeout)")
	cmd.Flags().Duration(idleTimeoutFlag, 0, "Time to keep idle keep-alive connections open (0 for no timeout)")
	cmd.Flags().IntP(verboseFlag, "v", 2, "Verbosity level (0 is errors only, 4 is trace)")

	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}
