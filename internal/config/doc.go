// Package config loads and saves vtree.json, the configuration file of the
// vtree command.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "localhost",
//	    "port": 7070,
//	    "wsPath": "/ws",
//	    "metricsPath": "/metrics",
//	    "readTimeout": "10s",
//	    "writeTimeout": "10s"
//	  },
//	  "render": {
//	    "idAttribute": "data-vid",
//	    "convertShadow": true
//	  },
//	  "publish": {
//	    "bucket": "snapshots",
//	    "prefix": "pages/",
//	    "region": "us-east-1"
//	  },
//	  "log": {
//	    "level": "info",
//	    "development": false
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    return err
//	}
//	fmt.Println("Listening on", cfg.ServerAddress())
package config
