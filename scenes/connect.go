package scenes

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stormfell/vantage-mp/config"
	"github.com/stormfell/vantage-mp/network"
	"github.com/stormfell/vantage-mp/systems"
	"github.com/stormfell/vantage-mp/ui"
)

// SceneChanger switches the active scene.
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// ConnectScene shows the direct-connect form and drives the join handshake.
type ConnectScene struct {
	sceneChanger SceneChanger
	connectUI    *ui.ConnectUI
	netClient    *network.Client
	once         sync.Once
	shouldGoBack bool
}

func NewConnectScene(sc SceneChanger) *ConnectScene {
	return &ConnectScene{sceneChanger: sc}
}

func (s *ConnectScene) Update() {
	s.once.Do(s.configure)

	s.connectUI.Update()

	if s.shouldGoBack {
		if s.netClient != nil {
			s.netClient.Disconnect()
			s.netClient = nil
		}
		systems.SaveCurrentSettings()
		s.sceneChanger.ChangeScene(NewMenuScene(s.sceneChanger))
		return
	}

	if s.netClient == nil {
		return
	}

	switch s.netClient.State() {
	case network.StateJoinedGame:
		s.connectUI.SetStatus("Joined! Loading arena...")
		client := s.netClient
		s.netClient = nil
		s.sceneChanger.ChangeScene(NewNetworkedScene(s.sceneChanger, client))

	case network.StateError:
		errMsg := "Connection failed"
		if err := s.netClient.LastError(); err != nil {
			errMsg = err.Error()
		}
		s.connectUI.SetStatus(errMsg)
		s.connectUI.SetConnecting(false)
		s.netClient.Disconnect()
		s.netClient = nil

	case network.StateConnecting:
		s.connectUI.SetStatus("Connecting...")

	case network.StateConnected:
		s.connectUI.SetStatus("Connected, joining game...")

	case network.StateDisconnected:
		s.connectUI.SetStatus("Disconnected")
		s.connectUI.SetConnecting(false)
		s.netClient = nil
	}
}

func (s *ConnectScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 30, 255})

	if s.connectUI == nil {
		return
	}
	s.connectUI.UI.Draw(screen)
}

func (s *ConnectScene) configure() {
	s.connectUI = ui.NewConnectUI(
		config.CurrentSettings.ServerAddress,
		config.CurrentSettings.PlayerName,
		func(address, playerName string) { s.onConnect(address, playerName) },
		func() { s.shouldGoBack = true },
	)
}

func (s *ConnectScene) onConnect(address, playerName string) {
	if s.netClient != nil {
		s.netClient.Disconnect()
	}

	config.CurrentSettings.ServerAddress = address
	config.CurrentSettings.PlayerName = playerName
	systems.SaveCurrentSettings()

	s.connectUI.SetStatus("Connecting...")
	s.connectUI.SetConnecting(true)

	s.netClient = network.NewClient()
	s.netClient.Connect(address, config.Version, playerName)
}
